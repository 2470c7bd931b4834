package curate

import "errors"

// Sentinel errors for curation operations
var (
	ErrTitleRequired    = errors.New("title is required")
	ErrSummaryRequired  = errors.New("summary is required")
	ErrCategoryUnknown  = errors.New("category is not in the registry")
	ErrCategoryNotFound = errors.New("category not found")
	ErrReservedCategory = errors.New("the default category cannot be removed")
	ErrIncorrectSecret  = errors.New("incorrect admin secret")
	ErrAdminRequired    = errors.New("administrator access required")
	ErrOracle           = errors.New("assistant unavailable or returned an invalid response")
	ErrGenericNotFound  = errors.New("not found")
)
