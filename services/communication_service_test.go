// services/communication_service_test.go
package services

import (
	"errors"
	"testing"

	"cleaning-crm/models"
)

func newTestCommunicationService(t *testing.T, mailer *fakeMailer) (*CommunicationService, models.Customer) {
	t.Helper()
	svc := NewCommunicationService(openTestDB(t), mailer)

	customer := models.Customer{Name: "Ada", Email: "ada@example.com"}
	if err := svc.DB.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return svc, customer
}

func TestCreateEmailSendsImmediately(t *testing.T) {
	mailer := &fakeMailer{}
	svc, customer := newTestCommunicationService(t, mailer)

	comm, err := svc.Create(CreateInput{
		Type:       models.CommunicationTypeEmail,
		Subject:    "Schedule change",
		Content:    "<p>Your slot moved.</p>",
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comm.Status != models.CommunicationStatusSent {
		t.Errorf("status %q, want sent", comm.Status)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ada@example.com" {
		t.Errorf("mail went to %v", mailer.sent)
	}
}

func TestCreateEmailFailureMarksFailed(t *testing.T) {
	svc, customer := newTestCommunicationService(t, &fakeMailer{failSend: true})

	comm, err := svc.Create(CreateInput{
		Type:       models.CommunicationTypeEmail,
		Subject:    "Schedule change",
		Content:    "body",
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comm.Status != models.CommunicationStatusFailed {
		t.Errorf("status %q, want failed", comm.Status)
	}
}

func TestCreateSMSStaysPending(t *testing.T) {
	mailer := &fakeMailer{}
	svc, customer := newTestCommunicationService(t, mailer)

	comm, err := svc.Create(CreateInput{
		Type:       models.CommunicationTypeSMS,
		Content:    "See you at 10",
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comm.Status != models.CommunicationStatusPending {
		t.Errorf("status %q, want pending", comm.Status)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("no mail should go out for sms, got %v", mailer.sent)
	}
}

func TestRetryUnknownID(t *testing.T) {
	svc, _ := newTestCommunicationService(t, &fakeMailer{})

	_, err := svc.Retry(9999)
	if !errors.Is(err, ErrCommunicationNotFound) {
		t.Fatalf("err = %v, want ErrCommunicationNotFound", err)
	}
}

func TestRetrySMSNotSupported(t *testing.T) {
	svc, customer := newTestCommunicationService(t, &fakeMailer{})

	comm, err := svc.Create(CreateInput{
		Type:       models.CommunicationTypeSMS,
		Content:    "ping",
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Retry(comm.ID)
	if !errors.Is(err, ErrRetryNotSupported) {
		t.Fatalf("err = %v, want ErrRetryNotSupported", err)
	}
}

func TestRetryFailedEmail(t *testing.T) {
	mailer := &fakeMailer{failSend: true}
	svc, customer := newTestCommunicationService(t, mailer)

	comm, err := svc.Create(CreateInput{
		Type:       models.CommunicationTypeEmail,
		Subject:    "Invoice",
		Content:    "body",
		CustomerID: customer.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comm.Status != models.CommunicationStatusFailed {
		t.Fatalf("precondition: status %q, want failed", comm.Status)
	}

	mailer.failSend = false
	retried, err := svc.Retry(comm.ID)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if retried.Status != models.CommunicationStatusSent {
		t.Errorf("status %q, want sent after retry", retried.Status)
	}
}

func TestGetStatsDeliveryRate(t *testing.T) {
	mailer := &fakeMailer{}
	svc, customer := newTestCommunicationService(t, mailer)

	if _, err := svc.Create(CreateInput{Type: models.CommunicationTypeEmail, Subject: "a", Content: "a", CustomerID: customer.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	mailer.failSend = true
	if _, err := svc.Create(CreateInput{Type: models.CommunicationTypeEmail, Subject: "b", Content: "b", CustomerID: customer.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalEmails != 2 || stats.TotalSMS != 0 {
		t.Errorf("counts %+v, want 2 emails / 0 sms", stats)
	}
	if stats.DeliveryRate != 50 {
		t.Errorf("delivery rate %v, want 50", stats.DeliveryRate)
	}
	if len(stats.RecentCommunications) != 2 {
		t.Errorf("recent %d, want 2", len(stats.RecentCommunications))
	}
}
