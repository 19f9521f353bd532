// Package notify turns workflow effects into outbound email/SMS. It runs
// strictly after a transition has been committed: a delivery failure is
// logged and never rolls anything back.
package notify

import (
	"encoding/json"
	"log"

	"github.com/Abhi9av-Git/LeaveEase/directory"
	"github.com/Abhi9av-Git/LeaveEase/models"
	"github.com/Abhi9av-Git/LeaveEase/notify/queue"
	"github.com/Abhi9av-Git/LeaveEase/workflow"
)

// Message is one outbound notification on one channel.
type Message struct {
	Channel string `json:"channel"` // "email" | "sms"
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Event is the unit published to the queue (or delivered inline).
type Event struct {
	ApplicationID uint      `json:"application_id"`
	RefCode       string    `json:"ref_code"`
	Messages      []Message `json:"messages"`
}

type Dispatcher struct {
	dir      *directory.Directory
	mailer   *Mailer
	sms      *SMSClient
	producer *queue.Producer // nil means deliver inline (goroutine)
}

func NewDispatcher(dir *directory.Directory, mailer *Mailer, sms *SMSClient, producer *queue.Producer) *Dispatcher {
	return &Dispatcher{dir: dir, mailer: mailer, sms: sms, producer: producer}
}

// ApplicationSubmitted notifies the snapshot approvers that a new
// application awaits them, and confirms the submission to the student.
func (d *Dispatcher) ApplicationSubmitted(app *models.Application, student *models.Student, approvers []models.Approver) {
	var msgs []Message
	for _, a := range approvers {
		msgs = append(msgs, d.pendingReviewMessages(app, student, a.Name, a.Email, a.Mobile)...)
	}
	msgs = append(msgs, d.studentMessages(app, student, "submitted", "", "")...)
	d.emit(app, msgs)
}

// TransitionCommitted fans out the effect of an approve/reject that has
// already been persisted. Forward is a role-scoped broadcast: every
// active holder of the new level's role, not just the snapshot approver.
func (d *Dispatcher) TransitionCommitted(app *models.Application, student *models.Student, eff workflow.Effect, actorName, comment string) {
	switch eff.Kind {
	case workflow.EffectForward:
		next, err := d.dir.FindActiveByRole(eff.NextLevel.Role())
		if err != nil {
			log.Printf("[notify] role lookup failed for %s: %v", eff.NextLevel, err)
			return
		}
		var msgs []Message
		for _, a := range next {
			msgs = append(msgs, d.pendingReviewMessages(app, student, a.Name, a.Email, a.Mobile)...)
		}
		d.emit(app, msgs)

	case workflow.EffectFinalApproval:
		d.emit(app, d.studentMessages(app, student, "approved", actorName, comment))

	case workflow.EffectFinalRejection:
		d.emit(app, d.studentMessages(app, student, "rejected", actorName, comment))

	case workflow.EffectNone:
		// cancellation: nothing mandated
	}
}

func (d *Dispatcher) pendingReviewMessages(app *models.Application, student *models.Student, name, email, mobile string) []Message {
	body, err := renderEmail("pending_review", templateData{
		RecipientName: name,
		StudentName:   student.Name,
		Type:          string(app.Type),
	})
	if err != nil {
		log.Printf("[notify] template error: %v", err)
		return nil
	}
	msgs := []Message{{
		Channel: "email",
		To:      email,
		Subject: subjectFor("pending_review", string(app.Type)),
		Body:    body,
	}}
	if mobile != "" {
		msgs = append(msgs, Message{
			Channel: "sms",
			To:      mobile,
			Body:    smsPendingReview(student.Name, string(app.Type)),
		})
	}
	return msgs
}

func (d *Dispatcher) studentMessages(app *models.Application, student *models.Student, kind, actorName, comment string) []Message {
	body, err := renderEmail(kind, templateData{
		StudentName: student.Name,
		Type:        string(app.Type),
		ActorName:   actorName,
		Comment:     comment,
	})
	if err != nil {
		log.Printf("[notify] template error: %v", err)
		return nil
	}
	msgs := []Message{{
		Channel: "email",
		To:      student.Email,
		Subject: subjectFor(kind, string(app.Type)),
		Body:    body,
	}}

	var sms string
	switch kind {
	case "submitted":
		sms = smsSubmitted(string(app.Type))
	case "approved":
		sms = smsApproved(string(app.Type), actorName)
	case "rejected":
		sms = smsRejected(string(app.Type), actorName)
	}
	if sms != "" && student.Mobile != "" {
		msgs = append(msgs, Message{Channel: "sms", To: student.Mobile, Body: sms})
	}
	return msgs
}

// emit hands the event to the queue when one is configured, otherwise
// delivers in the background. Either way the caller returns immediately.
func (d *Dispatcher) emit(app *models.Application, msgs []Message) {
	if len(msgs) == 0 {
		return
	}
	ev := Event{ApplicationID: app.ID, RefCode: app.RefCode, Messages: msgs}

	if d.producer != nil {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Printf("[notify] marshal failed: %v", err)
			return
		}
		if err := d.producer.Publish([]byte(app.RefCode), payload); err != nil {
			log.Printf("[notify] publish failed: %v", err)
		}
		return
	}
	go d.deliver(ev)
}

// HandleMessage implements queue.Handler for the consumer worker.
func (d *Dispatcher) HandleMessage(value []byte) error {
	var ev Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return err
	}
	d.deliver(ev)
	return nil
}

func (d *Dispatcher) deliver(ev Event) {
	for _, m := range ev.Messages {
		var err error
		switch m.Channel {
		case "email":
			if d.mailer != nil {
				err = d.mailer.Send(m.To, m.Subject, m.Body)
			}
		case "sms":
			if d.sms != nil {
				err = d.sms.Send(m.To, m.Body)
			}
		}
		if err != nil {
			log.Printf("[notify] %s to %s failed (app %s): %v", m.Channel, m.To, ev.RefCode, err)
		}
	}
}
