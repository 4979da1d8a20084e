package utils

import (
	"fmt"
	"html"
)

const emailWrapper = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">%s</div>`

const buttonStyle = `display: inline-block; background: #8b5cf6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 20px;`

// WelcomeEmail is sent after registration
func WelcomeEmail(to, name, baseURL string) Email {
	body := fmt.Sprintf(`
		<h1 style="color: #8b5cf6;">Welcome to AI Video Generator!</h1>
		<p>Hi %s,</p>
		<p>Thank you for joining AI Video Generator. You're all set to start creating amazing videos with AI!</p>
		<p>Get started by creating your first video today.</p>
		<a href="%s" style="%s">Start Creating</a>
	`, html.EscapeString(name), html.EscapeString(baseURL), buttonStyle)
	return Email{To: to, Subject: "Welcome to AI Video Generator!", HTML: fmt.Sprintf(emailWrapper, body)}
}

// PaymentSuccessEmail confirms a verified payment. amount is in paise.
func PaymentSuccessEmail(to, planName string, amount int64, paymentID, orderID, baseURL string) Email {
	body := fmt.Sprintf(`
		<h1 style="color: #10b981;">Payment Successful!</h1>
		<p>Thank you for your subscription.</p>
		<div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<p><strong>Plan:</strong> %s</p>
			<p><strong>Amount:</strong> %s</p>
			<p><strong>Payment ID:</strong> %s</p>
			<p><strong>Order ID:</strong> %s</p>
		</div>
		<p>Your account has been upgraded successfully. You can now enjoy all the premium features!</p>
		<a href="%s/dashboard" style="%s">Go to Dashboard</a>
	`, html.EscapeString(planName), FormatRupees(amount), html.EscapeString(paymentID),
		html.EscapeString(orderID), html.EscapeString(baseURL), buttonStyle)
	return Email{To: to, Subject: "Payment Successful - AI Video Generator", HTML: fmt.Sprintf(emailWrapper, body)}
}

// PasswordResetEmail carries a reset link
func PasswordResetEmail(to, resetLink string) Email {
	body := fmt.Sprintf(`
		<h1 style="color: #8b5cf6;">Reset Your Password</h1>
		<p>Click the button below to reset your password:</p>
		<a href="%s" style="%s">Reset Password</a>
		<p>If you didn't request this, please ignore this email.</p>
		<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">This link will expire in 1 hour.</p>
	`, html.EscapeString(resetLink), buttonStyle)
	return Email{To: to, Subject: "Reset Your Password - AI Video Generator", HTML: fmt.Sprintf(emailWrapper, body)}
}

// VideoReadyEmail tells the user a generation finished
func VideoReadyEmail(to, videoURL, prompt string) Email {
	body := fmt.Sprintf(`
		<h1 style="color: #8b5cf6;">Your Video is Ready!</h1>
		<p>Your AI-generated video has been completed.</p>
		<div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<p><strong>Prompt:</strong> %s</p>
		</div>
		<a href="%s" style="%s">View Video</a>
	`, html.EscapeString(prompt), html.EscapeString(videoURL), buttonStyle)
	return Email{To: to, Subject: "Your Video is Ready! - AI Video Generator", HTML: fmt.Sprintf(emailWrapper, body)}
}

// ContactAdminEmail forwards a contact form submission to the site admin
func ContactAdminEmail(adminEmail, name, email, subject, message string) Email {
	body := fmt.Sprintf(`
		<h2>New Contact Form Submission</h2>
		<div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Subject:</strong> %s</p>
			<p><strong>Message:</strong></p>
			<p>%s</p>
		</div>
	`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(subject), EscapeMultiline(message))
	return Email{To: adminEmail, Subject: "Contact Form: " + subject, HTML: fmt.Sprintf(emailWrapper, body)}
}

// ContactAckEmail confirms receipt to the person who wrote in
func ContactAckEmail(to, name, message string) Email {
	body := fmt.Sprintf(`
		<h2>Thank you for contacting us!</h2>
		<p>Hi %s,</p>
		<p>We've received your message and will get back to you within 24 hours.</p>
		<p>Your message:</p>
		<div style="background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<p>%s</p>
		</div>
		<p>Best regards,<br>AI Video Generator Team</p>
	`, html.EscapeString(name), EscapeMultiline(message))
	return Email{To: to, Subject: "Thank you for contacting us - AI Video Generator", HTML: fmt.Sprintf(emailWrapper, body)}
}

// FormatRupees renders an amount in paise as ₹x.yy
func FormatRupees(paise int64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}
