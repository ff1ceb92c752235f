package services

import (
	"database/sql"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// EmailService sends operational notification emails over SMTP.
type EmailService struct {
	db *sql.DB
}

// NewEmailService creates a new email service instance
func NewEmailService(db *sql.DB) *EmailService {
	return &EmailService{db: db}
}

// convertHTMLToText converts HTML content to plain text for email sending.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := strings.ReplaceAll(text.String(), "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

// processTemplate substitutes {{key}} placeholders in a template string.
func processTemplate(templateStr string, variables map[string]string) string {
	result := templateStr
	for key, value := range variables {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), value)
	}
	return result
}

// sendEmail sends one plain-text email using the SMTP settings from the
// environment (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, SMTP_FROM).
func (es *EmailService) sendEmail(to []string, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	if host == "" || len(to) == 0 {
		return fmt.Errorf("smtp not configured or no recipients")
	}
	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", user, password, host)

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// pendingSubmission is one overdue document submission row for the digest.
type pendingSubmission struct {
	ProjectNumber string
	ProjectName   string
	DocumentType  string
	DaysPending   int
}

// SendPendingApprovalDigest emails the admins a digest of document
// submissions that have been waiting for client approval longer than
// maxDays. Nothing is sent when there is nothing pending.
func (es *EmailService) SendPendingApprovalDigest(maxDays int) error {
	rows, err := es.db.Query(`
		SELECT pr.project_number, pr.name, ds.document_type,
		       EXTRACT(DAY FROM NOW() - ds.submission_date)::int
		FROM document_submission ds
		JOIN project pr ON ds.project_id = pr.id
		WHERE ds.approval_date IS NULL
		  AND ds.submission_date < NOW() - ($1 || ' days')::interval
		  AND pr.status = 'Active'
		ORDER BY ds.submission_date`, maxDays)
	if err != nil {
		return fmt.Errorf("failed to fetch pending submissions: %w", err)
	}
	defer rows.Close()

	var pending []pendingSubmission
	for rows.Next() {
		var p pendingSubmission
		if err := rows.Scan(&p.ProjectNumber, &p.ProjectName, &p.DocumentType, &p.DaysPending); err != nil {
			return fmt.Errorf("failed to scan pending submission: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	admins, err := es.adminEmails()
	if err != nil {
		return err
	}

	var list strings.Builder
	for _, p := range pending {
		list.WriteString(fmt.Sprintf("<li>%s (%s): %s pending for %d days</li>",
			p.ProjectNumber, p.ProjectName, p.DocumentType, p.DaysPending))
	}

	bodyHTML := processTemplate(`
		<h2>Pending client approvals</h2>
		<p>The following submissions have waited more than {{days}} days:</p>
		<ul>{{list}}</ul>`,
		map[string]string{
			"days": fmt.Sprintf("%d", maxDays),
			"list": list.String(),
		})

	subject := fmt.Sprintf("Pending approvals: %d submissions overdue", len(pending))
	return es.sendEmail(admins, subject, convertHTMLToText(bodyHTML))
}

func (es *EmailService) adminEmails() ([]string, error) {
	rows, err := es.db.Query(`SELECT email FROM users WHERE is_admin = true AND suspended = false`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
