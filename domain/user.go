package domain

import "time"

// RoleUser is the only role this flow ever assigns.
const RoleUser = "USER"

// User is the durable account record.
type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	Birthday          string    `json:"birthday,omitempty"`
	Role              string    `json:"role"`
	Active            bool      `json:"active"`
	RegistrationDate  time.Time `json:"registration_date"`
	PasswordHash      string    `json:"-"`
	ActivationCode    string    `json:"-"`
	PasswordResetCode string    `json:"-"`
	TweetCount        int64     `json:"tweet_count"`
	MediaTweetCount   int64     `json:"media_tweet_count"`
	LikeCount         int64     `json:"like_count"`
}

// AuthUser is the reduced view of a user returned alongside a minted token.
type AuthUser struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	Active          bool   `json:"active"`
	TweetCount      int64  `json:"tweet_count"`
	MediaTweetCount int64  `json:"media_tweet_count"`
	LikeCount       int64  `json:"like_count"`
}

// CommonUser carries just enough of a user to address a notification.
type CommonUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Principal is the identity bound to an authenticated request by the token
// middleware. It is handed explicitly into service calls instead of being
// read from ambient state.
type Principal struct {
	ID    int64
	Email string
}
