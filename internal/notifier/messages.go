package notifier

import "fmt"

// Message is a rendered notification ready for delivery.
type Message struct {
	Subject string
	HTML    string
}

// OTPMessage renders the verification-code email.
func OTPMessage(otp string) Message {
	return Message{
		Subject: "Your Verification Code",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Your Verification Code</h2>
  <p>Your OTP verification code is:</p>
  <h1 style="color: #007bff; letter-spacing: 5px;">%s</h1>
  <p>This code will expire shortly.</p>
  <p>If you didn't request this code, please ignore this email.</p>
</div>`, otp),
	}
}

// PasswordResetMessage renders the reset-link email. resetURL already
// carries the token as a query parameter.
func PasswordResetMessage(resetURL string) Message {
	return Message{
		Subject: "Password Reset Request",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Password Reset Request</h2>
  <p>You requested a password reset. Click the link below to reset your password:</p>
  <a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a>
  <p>This link will expire soon.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`, resetURL),
	}
}

// WelcomeMessage renders the post-verification welcome email.
func WelcomeMessage(name string) Message {
	return Message{
		Subject: "Welcome to Our App",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Welcome %s!</h2>
  <p>Thank you for registering with us. Your account has been successfully created.</p>
  <p>Get started by logging in to your account.</p>
</div>`, name),
	}
}
