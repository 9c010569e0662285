package email

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/safarpk/safarpk/internal/kafka"
)

var tokenParam = regexp.MustCompile(`(access_token=)[^&#]*`)

// Sender delivers notifications. Delivery is a log line on out.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func (s *Sender) Send(ctx context.Context, n kafka.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line := fmt.Sprintf("send email to %s [%s]: %s", n.Email, n.Type, n.Subject)
	if n.Link != "" {
		line += " " + redactLink(n.Link)
	}
	_, err := fmt.Fprintln(s.out, line)
	return err
}

// redactLink masks access tokens so recovery links never reach the logs.
func redactLink(link string) string {
	return tokenParam.ReplaceAllString(link, "${1}[redacted]")
}
