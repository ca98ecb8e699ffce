package notify

import "log"

type MailKind string

const (
	KindVerify MailKind = "verify"
)

type MailEvent struct {
	Email string
	Token string
	Kind  MailKind
}

// Notifier принимает исходящие почтовые события. Доставкой занимается
// внешний коллаборатор, ядро только публикует событие.
type Notifier interface {
	Notify(event MailEvent)
}

// MailQueue хранит почтовые события в буфере и обрабатывает их одним потребителем
type MailQueue struct {
	events chan MailEvent
	done   chan struct{}
}

func NewMailQueue(buffer int) *MailQueue {
	return &MailQueue{
		events: make(chan MailEvent, buffer),
		done:   make(chan struct{}),
	}
}

// Run обрабатывает события до закрытия очереди.
// Сейчас доставки почты нет, печатаем токен в лог.
func (q *MailQueue) Run() {
	defer close(q.done)

	for event := range q.events {
		log.Printf("[mail] %s token for %s: %s", event.Kind, event.Email, event.Token)
	}
}

// Notify не блокируется: при переполнении событие теряется с записью в лог
func (q *MailQueue) Notify(event MailEvent) {
	select {
	case q.events <- event:
	default:
		log.Printf("[mail] queue full, dropping %s event for %s", event.Kind, event.Email)
	}
}

// Close останавливает очередь и дожидается потребителя
func (q *MailQueue) Close() {
	close(q.events)
	<-q.done
}
