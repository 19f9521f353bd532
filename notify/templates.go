package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Email templates, keyed by the situation that triggers them. The bodies
// mirror the wording students and staff already know from the portal mails.
var emailTmpl = template.Must(template.New("mail").Parse(`
{{define "submitted"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2c3e50;">Application Submitted Successfully</h2>
  <p>Dear {{.StudentName}},</p>
  <p>Your {{.Type}} application has been submitted successfully and is now under review.</p>
  <p>You will receive updates on the status of your application via email.</p>
  <p>Thank you for using our Leave Management System.</p>
  <br>
  <p>Best regards,<br>College Administration</p>
</div>
{{end}}

{{define "approved"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #27ae60;">Application Approved</h2>
  <p>Dear {{.StudentName}},</p>
  <p>Your {{.Type}} application has been approved by {{.ActorName}}.</p>
  {{if .Comment}}<p><strong>Comments:</strong> {{.Comment}}</p>{{end}}
  <p>Please check your application status in the portal for further details.</p>
  <br>
  <p>Best regards,<br>College Administration</p>
</div>
{{end}}

{{define "rejected"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #e74c3c;">Application Rejected</h2>
  <p>Dear {{.StudentName}},</p>
  <p>Your {{.Type}} application has been rejected by {{.ActorName}}.</p>
  {{if .Comment}}<p><strong>Reason:</strong> {{.Comment}}</p>{{end}}
  <p>You may submit a new application if needed.</p>
  <br>
  <p>Best regards,<br>College Administration</p>
</div>
{{end}}

{{define "pending_review"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #3498db;">New Application Pending Review</h2>
  <p>Dear {{.RecipientName}},</p>
  <p>A new {{.Type}} application has been submitted by {{.StudentName}} and requires your review.</p>
  <p>Please log in to the admin portal to review and take action on this application.</p>
  <br>
  <p>Best regards,<br>Leave Management System</p>
</div>
{{end}}
`))

type templateData struct {
	StudentName   string
	RecipientName string
	Type          string // "leave" | "outpass"
	ActorName     string
	Comment       string
}

func renderEmail(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func subjectFor(name, appType string) string {
	upper := strings.ToUpper(appType)
	switch name {
	case "submitted":
		return "Application Submitted - " + upper
	case "approved":
		return "Application Approved - " + upper
	case "rejected":
		return "Application Rejected - " + upper
	default:
		return "New Application Pending - " + upper
	}
}

// SMS bodies: short, no markup, always point back to email for details.
func smsSubmitted(appType string) string {
	return fmt.Sprintf("Your %s application has been submitted successfully and is under review. You will receive updates via email.", appType)
}

func smsApproved(appType, actorName string) string {
	return fmt.Sprintf("Your %s application has been approved by %s. Please check your email for details.", appType, actorName)
}

func smsRejected(appType, actorName string) string {
	return fmt.Sprintf("Your %s application has been rejected by %s. Please check your email for details.", appType, actorName)
}

func smsPendingReview(studentName, appType string) string {
	return fmt.Sprintf("New %s application submitted by %s requires your review. Please log in to the admin portal.", appType, studentName)
}
