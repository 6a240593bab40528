// Package board derives the recruitment-workflow status of every scouting
// assignment and groups the results into kanban buckets.
package board

import "github.com/okian/scoutdesk/internal/domain/model"

// Status is the effective display status of a board record.
type Status string

// Effective statuses. The first four mirror stored assignment statuses;
// MarkedForScouting only exists on synthetic shortlist records.
const (
	StatusMarkedForScouting Status = "marked_for_scouting"
	StatusAssigned          Status = Status(model.AssignmentAssigned)
	StatusInProgress        Status = Status(model.AssignmentInProgress)
	StatusCompleted         Status = Status(model.AssignmentCompleted)
	StatusReviewed          Status = Status(model.AssignmentReviewed)
)

// Bucket is a kanban column.
type Bucket string

// Kanban columns.
const (
	BucketShortlisted Bucket = "shortlisted"
	BucketAssigned    Bucket = "assigned"
	BucketCompleted   Bucket = "completed"
)

// Variant is the visual style hint for a status badge.
type Variant string

// Badge variants.
const (
	VariantWarning   Variant = "warning"
	VariantSecondary Variant = "secondary"
	VariantDefault   Variant = "default"
	VariantOutline   Variant = "outline"
	VariantSuccess   Variant = "success"
)

// Label text shown for statuses.
const (
	LabelReportSubmitted = "Report Submitted"
	AssignedToNobody     = "Unassigned"
	UnknownScout         = "Unknown Scout"
)

type presentation struct {
	label   string
	variant Variant
	bucket  Bucket
}

// presentations is the fixed status lookup table.
var presentations = map[Status]presentation{
	StatusMarkedForScouting: {label: "Marked for Scouting", variant: VariantWarning, bucket: BucketShortlisted},
	StatusAssigned:          {label: "Assigned", variant: VariantSecondary, bucket: BucketAssigned},
	StatusInProgress:        {label: "In Progress", variant: VariantDefault, bucket: BucketAssigned},
	StatusReviewed:          {label: "Reviewed", variant: VariantOutline, bucket: BucketAssigned},
	StatusCompleted:         {label: "Completed", variant: VariantSuccess, bucket: BucketCompleted},
}

// BucketFor maps an effective status to its kanban column.
// Unknown statuses land in the assigned column.
func BucketFor(s Status) Bucket {
	if p, ok := presentations[s]; ok {
		return p.bucket
	}
	return BucketAssigned
}

// Label returns the human label for s.
func Label(s Status) string {
	if p, ok := presentations[s]; ok {
		return p.label
	}
	return string(s)
}

// VariantFor returns the badge variant for s.
func VariantFor(s Status) Variant {
	if p, ok := presentations[s]; ok {
		return p.variant
	}
	return VariantDefault
}
