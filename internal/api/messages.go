package api

import "time"

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Bio      *string `json:"bio,omitempty"`
}

type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Token     string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type GetProfileRequest struct{}

type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type ListMyPostsRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

type ListMyPostsResponse struct {
	Posts []Post `json:"posts"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
