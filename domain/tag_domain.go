package domain

var (
	MessageSuccessGetTags = "success get tags"
	MessageSuccessGetTag  = "success get tag"

	MessageFailedGetTags = "failed to get tags"
	MessageFailedGetTag  = "failed to get tag"

	ErrTagNotFound = NewNotFoundError("tag not found")
	ErrInvalidTag  = NewValidationError("invalid tag: object does not exist")
	ErrSlugTaken   = NewConflictError("a tag with that slug already exists")
)

type (
	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=30"`
		Color string `json:"color" validate:"required,hexcolor,max=7"`
		Slug  string `json:"slug" validate:"required,max=30,slug"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
)
