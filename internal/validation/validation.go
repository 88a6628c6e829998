// Package validation holds the explicit field validators run before any
// store mutation. Each validator returns a FieldErrors value; an empty
// map means the input passed.
package validation

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	MaxTitleLen   = 30
	MaxBodyLen    = 300
	MaxSummaryLen = 60
	MaxQueryLen   = 100

	MinPasswordLen = 8
)

var (
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

// FieldErrors maps a field name to the reason it was rejected.
type FieldErrors map[string]string

func (f FieldErrors) Any() bool {
	return len(f) > 0
}

type RegistrationInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Pincode  string `json:"pincode"`
}

// Registration checks every field constraint on a sign-up payload.
// Uniqueness of email and username is a store concern checked separately.
func Registration(in RegistrationInput) FieldErrors {
	errs := FieldErrors{}
	if in.Username == "" {
		errs["username"] = "Username is required"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "Enter a valid email address"
	}
	if msg := passwordError(in.Password); msg != "" {
		errs["password"] = msg
	}
	if !phoneRe.MatchString(in.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if !pincodeRe.MatchString(in.Pincode) {
		errs["pincode"] = "Pincode must be 6 digits"
	}
	return errs
}

// passwordError enforces length plus one lowercase, one uppercase and one
// digit. Spelled out rune-by-rune since Go's regexp has no lookaheads.
func passwordError(password string) string {
	const msg = "Password must be at least 8 characters long, contain one uppercase letter, one lowercase letter, and one number"
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return msg
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return msg
	}
	return ""
}

type ContentInput struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
	Document   string   `json:"document"`
	// Author is accepted so clients mirroring the read shape do not get
	// rejected, but the server always assigns the authenticated caller.
	Author string `json:"author"`
}

// Content checks the length limits on a content payload. Limits count
// characters, not bytes, so multibyte text is measured the way users
// see it.
func Content(in ContentInput) FieldErrors {
	errs := FieldErrors{}
	if in.Title == "" {
		errs["title"] = "Title is required"
	} else if utf8.RuneCountInString(in.Title) > MaxTitleLen {
		errs["title"] = "Title must be at most 30 characters"
	}
	if in.Body == "" {
		errs["body"] = "Body is required"
	} else if utf8.RuneCountInString(in.Body) > MaxBodyLen {
		errs["body"] = "Body must be at most 300 characters"
	}
	if in.Summary == "" {
		errs["summary"] = "Summary is required"
	} else if utf8.RuneCountInString(in.Summary) > MaxSummaryLen {
		errs["summary"] = "Summary must be at most 60 characters"
	}
	for _, c := range in.Categories {
		if c == "" {
			errs["categories"] = "Categories must not contain empty labels"
			break
		}
		if utf8.RuneCountInString(c) > 100 {
			errs["categories"] = "Category labels must be at most 100 characters"
			break
		}
	}
	return errs
}

// SearchQuery validates the free-text query before any store access.
func SearchQuery(query string) FieldErrors {
	errs := FieldErrors{}
	if query == "" {
		errs["query"] = "Query is required"
	} else if utf8.RuneCountInString(query) > MaxQueryLen {
		errs["query"] = "Query must be at most 100 characters"
	}
	return errs
}
