package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldApplicationStatus = "application_status"
	fieldEmployerFeedback  = "employer_feedback"
	fieldInterviews        = "interviews"
	fieldNotes             = "notes"
	fieldJobStatus         = "job_status"
	fieldRead              = "read"
	fieldCVFile            = "cv_file"
	fieldLogo              = "logo"
	fieldAvatar            = "avatar"
	fieldEducation         = "education"
	fieldExperience        = "experience"
	fieldUpdatedAt         = "updated_at"
)
