package handler

import (
	"regexp"
	"strings"
)

// Field-level validation rules for request bodies. Each check returns a
// human-readable message; handlers collect them and reject the request
// with a single 400 listing every offending field.

var (
	emailRe   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	digitRe   = regexp.MustCompile(`\d`)
	phoneRe   = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	countryRe = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
	otpRe     = regexp.MustCompile(`^[0-9]{6}$`)
)

func checkName(name string) string {
	n := len(strings.TrimSpace(name))
	switch {
	case n == 0:
		return "Name is required"
	case n < 2:
		return "Name must be at least 2 characters"
	case n > 50:
		return "Name must not exceed 50 characters"
	}
	return ""
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(email) {
		return "Please provide a valid email address"
	}
	return ""
}

func checkPassword(password string) string {
	switch {
	case password == "":
		return "Password is required"
	case len(password) < 6:
		return "Password must be at least 6 characters"
	case !digitRe.MatchString(password):
		return "Password must contain at least one number"
	}
	return ""
}

func checkPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if len(phone) < 6 || len(phone) > 20 {
		return "Phone must be between 6 and 20 characters"
	}
	if !phoneRe.MatchString(phone) {
		return "Phone must contain only numbers, spaces, and valid characters (+, -, (), spaces)"
	}
	return ""
}

func checkAddress(address string) string {
	if len(address) > 200 {
		return "Address must not exceed 200 characters"
	}
	return ""
}

func checkCountry(country string) string {
	if country == "" {
		return ""
	}
	if len(country) > 100 {
		return "Country must not exceed 100 characters"
	}
	if !countryRe.MatchString(country) {
		return "Country must contain only letters, spaces, and hyphens"
	}
	return ""
}

func checkOTP(otp string) string {
	if !otpRe.MatchString(otp) {
		return "OTP must be a 6-digit number"
	}
	return ""
}

// collect gathers the non-empty messages.
func collect(msgs ...string) []string {
	var out []string
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
