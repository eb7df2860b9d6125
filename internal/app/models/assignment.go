package models

// AssignmentFailure records one student a bulk assignment could not update
type AssignmentFailure struct {
	UserID  int64  `json:"userId"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BatchAssignmentResult reports the per-student outcome of a batch assignment
type BatchAssignmentResult struct {
	Batch   string              `json:"batch"`
	MessID  int64               `json:"messId"`
	Updated []int64             `json:"updated"`
	Failed  []AssignmentFailure `json:"failed"`
}

// Complete reports whether every matched student was updated
func (r *BatchAssignmentResult) Complete() bool {
	return len(r.Failed) == 0
}
