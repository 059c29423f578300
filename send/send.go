// Package send delivers an assembled report to its configured
// channels.
package send

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"dbreport/config"
	"dbreport/core"
)

// Stdout writes the report to w. Image references are inlined as
// base64 data uris so the output is self-contained.
func Stdout(w io.Writer, dt *core.DataPresented) error {
	content := dt.Content

	for _, img := range dt.Images {
		uri := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
		content = strings.ReplaceAll(content, "cid:"+img.CID, uri)
	}

	_, err := io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// Mail sends the report over smtp with the images embedded inline, so
// cid references in the html body resolve in the mail client.
func Mail(ctx context.Context, logger *zap.Logger, cfg *config.Mail, title string, dt *core.DataPresented) error {
	logger.Info("sending the report by mail",
		zap.String("host", cfg.Host),
		zap.Strings("to", cfg.To))

	msg := mail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(cfg.To...); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = title
	}
	msg.Subject(subject)

	if dt.IsHTML {
		msg.SetBodyString(mail.TypeTextHTML, dt.Content)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, dt.Content)
	}

	for _, img := range dt.Images {
		err := msg.EmbedReader(img.CID, bytes.NewReader(img.Data),
			mail.WithFileContentID(img.CID),
			mail.WithFileContentType(mail.ContentType(img.MIME)))
		if err != nil {
			return fmt.Errorf("embed image %s: %w", img.CID, err)
		}
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass))
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
