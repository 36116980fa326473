package dto

// MaxColumnLength is the varchar limit shared by user and note text columns.
const MaxColumnLength = 255

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type SignUpResult struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	Email  string
	UserId int64
}
