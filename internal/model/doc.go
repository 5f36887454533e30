package model

import "time"

// Document is implemented by entities stored in the document backend. The
// write path owns both timestamps; callers never supply them.
type Document interface {
	SetDocID(id string)
	SetTimestamps(created, updated time.Time)
}

func (p *Patient) SetDocID(id string) { p.DocID = id }
func (p *Patient) SetTimestamps(created, updated time.Time) {
	p.CreatedAt, p.UpdatedAt = &created, &updated
}

func (c *HealthCondition) SetDocID(id string) { c.DocID = id }
func (c *HealthCondition) SetTimestamps(created, updated time.Time) {
	c.CreatedAt, c.UpdatedAt = &created, &updated
}

func (l *LifestyleFactor) SetDocID(id string) { l.DocID = id }
func (l *LifestyleFactor) SetTimestamps(created, updated time.Time) {
	l.CreatedAt, l.UpdatedAt = &created, &updated
}

func (m *HealthMetric) SetDocID(id string) { m.DocID = id }
func (m *HealthMetric) SetTimestamps(created, updated time.Time) {
	m.CreatedAt, m.UpdatedAt = &created, &updated
}

func (a *HealthcareAccess) SetDocID(id string) { a.DocID = id }
func (a *HealthcareAccess) SetTimestamps(created, updated time.Time) {
	a.CreatedAt, a.UpdatedAt = &created, &updated
}
