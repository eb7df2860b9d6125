package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/pkg/notify"
)

type sent struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(cfg SMTPConfig, out *[]sent, err error) *EmailServiceImpl {
	s := NewEmailService(cfg, zerolog.Nop())
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*out = append(*out, sent{addr: addr, from: from, to: to, msg: string(msg)})
		return err
	}
	return s
}

var configured = SMTPConfig{
	Host: "smtp.campus.edu", Port: 587, Username: "desk", Password: "pw",
	FromName: "Mess Desk", FromEmail: "desk@campus.edu",
}

func TestStatusChangedEmail(t *testing.T) {
	var out []sent
	s := newTestService(configured, &out, nil)

	err := s.SendStatusChangedEmail("asha@campus.edu", "Asha", models.StatusChange{
		ComplaintID: 41, MessID: 3, OldStatus: models.StatusNew, NewStatus: models.StatusForwarded,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one mail, got %d", len(out))
	}
	m := out[0]
	if m.addr != "smtp.campus.edu:587" || m.from != "desk@campus.edu" || m.to[0] != "asha@campus.edu" {
		t.Fatalf("unexpected envelope %+v", m)
	}
	if !strings.Contains(m.msg, "Subject: Complaint #41 is now Forwarded\r\n") {
		t.Fatalf("subject missing:\n%s", m.msg)
	}
	if !strings.Contains(m.msg, "from <strong>New</strong> to <strong>Forwarded</strong>") {
		t.Fatalf("body missing transition:\n%s", m.msg)
	}
}

func TestUnconfiguredSMTPOnlyLogs(t *testing.T) {
	var out []sent
	s := newTestService(SMTPConfig{Host: "smtp.campus.edu"}, &out, nil)
	if err := s.SendComplaintReceivedEmail("a@b.c", "A", models.Complaint{ID: 1}); err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatal("nothing should be sent without credentials")
	}
}

func TestSendFailureIsReturned(t *testing.T) {
	var out []sent
	s := newTestService(configured, &out, errors.New("connection refused"))
	if err := s.SendComplaintReceivedEmail("a@b.c", "A", models.Complaint{ID: 1}); err == nil {
		t.Fatal("expected error")
	}
}

type staticRecipients map[int64][2]string

func (r staticRecipients) Recipient(_ context.Context, userID int64) (string, string, error) {
	v, ok := r[userID]
	if !ok {
		return "", "", errors.New("unknown user")
	}
	return v[0], v[1], nil
}

func TestNotificationSinkRoutesToFilingStudent(t *testing.T) {
	var out []sent
	sink := NewNotificationSink(newTestService(configured, &out, nil), staticRecipients{7: {"asha@campus.edu", "Asha"}})

	if err := sink.Deliver(context.Background(), notify.ComplaintCreated(models.Complaint{ID: 1, StudentID: 7, MessID: 3, Status: models.StatusNew}, true)); err != nil {
		t.Fatal(err)
	}
	if err := sink.Deliver(context.Background(), notify.StatusChanged(models.StatusChange{ComplaintID: 1, StudentID: 7, NewStatus: models.StatusResolved})); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].to[0] != "asha@campus.edu" {
		t.Fatalf("unexpected mails %+v", out)
	}

	err := sink.Deliver(context.Background(), notify.StatusChanged(models.StatusChange{ComplaintID: 2, StudentID: 99}))
	if err == nil {
		t.Fatal("unknown recipient should fail delivery")
	}
}
