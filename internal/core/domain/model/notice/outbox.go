package notice

import "multicleaner/internal/core/domain/model/kernel"

// Outbox collects notices during a transaction. It is not safe for concurrent use;
// each handler invocation owns its own outbox.
type Outbox struct {
	notices []Notice
}

func (o *Outbox) Add(recipient kernel.UUID, kind Kind, params Params) {
	o.notices = append(o.notices, Notice{Recipient: recipient, Kind: kind, Params: params})
}

// AddAll sends the same notice to several recipients.
func (o *Outbox) AddAll(recipients []kernel.UUID, kind Kind, params Params) {
	for _, r := range recipients {
		o.Add(r, kind, params)
	}
}

func (o *Outbox) Len() int { return len(o.notices) }

// Drain returns the collected notices and empties the outbox.
func (o *Outbox) Drain() []Notice {
	out := o.notices
	o.notices = nil
	return out
}
