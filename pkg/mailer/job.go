package mailer

// Job is the JSON payload put on the RabbitMQ queue for sending a
// notification email. The producer renders subject and body; the worker only
// delivers.
type Job struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
