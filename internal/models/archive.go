package models

// ArchiveGroup is a derived view: the completed tasks for one calendar day.
// Date is formatted YYYY-MM-DD in UTC. Groups are recomputed from the task
// set and never mutated in place.
type ArchiveGroup struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Tasks []Task `json:"tasks"`
}
