package common

// Storage keys. Names follow the first web prototype. Only its listings
// load unchanged: prototype accounts hold plaintext passwords and its
// session carries no token, so neither passes verification here.
const (
	KeyAccounts     = "lj_users_v1"
	KeySession      = "lj_current_v1"
	KeyListings     = "lj_jobs_v1"
	KeyApplications = "lj_applications_v1"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// DeepLinkParam is the query parameter naming a listing to open on start.
const DeepLinkParam = "job"
