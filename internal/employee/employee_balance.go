package employee

// LeaveCounters are the stored totals and used days for each leave type.
type LeaveCounters struct {
	SickTotal      int
	SickUsed       int
	VacationTotal  int
	VacationUsed   int
	MaternityTotal int
	MaternityUsed  int
}

type LeaveBucket struct {
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Eligible  bool `json:"eligible"`
}

type LeaveBalances struct {
	Sick      LeaveBucket `json:"sick"`
	Vacation  LeaveBucket `json:"vacation"`
	Maternity LeaveBucket `json:"maternity"`
}

// ComputeLeaveBalances derives per-type remaining days and eligibility.
// Maternity counts only for female employees; anyone else sees 0/0.
func ComputeLeaveBalances(c LeaveCounters, gender string) LeaveBalances {
	maternity := LeaveBucket{}
	if gender == GenderFemale {
		maternity = buildLeaveBucket(c.MaternityTotal, c.MaternityUsed)
	}

	return LeaveBalances{
		Sick:      buildLeaveBucket(c.SickTotal, c.SickUsed),
		Vacation:  buildLeaveBucket(c.VacationTotal, c.VacationUsed),
		Maternity: maternity,
	}
}

func buildLeaveBucket(total, used int) LeaveBucket {
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}
	return LeaveBucket{
		Total:     total,
		Used:      used,
		Remaining: remaining,
		Eligible:  remaining > 0,
	}
}
