package usecase

import "errors"

var (
	ErrNoPage                 = errors.New("page not found")
	ErrNoSite                 = errors.New("site not found")
	ErrNotSiteOwner           = errors.New("user does not own this site")
	ErrTooManySections        = errors.New("page has too many content sections")
	ErrUndefinedImagePosition = errors.New("image position is required for triple-image-col content section")
	ErrUnknownContentSection  = errors.New("content section not found on page or of unknown type")
	ErrFirstNotHeader         = errors.New("the first content section must be a header")
	ErrNoDataTags             = errors.New("page has no data tags")
	ErrAlreadyBlacklisted     = errors.New("category is already blacklisted")
)
