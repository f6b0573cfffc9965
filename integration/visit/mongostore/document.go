package mongostore

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/visitlog/core/visit"
)

type document struct {
	ID         string         `bson:"_id"`
	UserID     string         `bson:"user_id"`
	Timestamp  time.Time      `bson:"timestamp"`
	SessionKey string         `bson:"session_key"`
	RemoteAddr string         `bson:"remote_addr"`
	UserAgent  string         `bson:"ua_string"`
	Hash       string         `bson:"hash"`
	CreatedAt  time.Time      `bson:"created_at"`
	Context    map[string]any `bson:"context,omitempty"`
	Device     string         `bson:"device"`
	OS         string         `bson:"os"`
	Browser    string         `bson:"browser"`
}

func toDocument(rec *visit.Record) document {
	return document{
		ID:         rec.ID.String(),
		UserID:     rec.UserID,
		Timestamp:  rec.Timestamp,
		SessionKey: rec.SessionKey,
		RemoteAddr: rec.RemoteAddr,
		UserAgent:  rec.UserAgent,
		Hash:       rec.Hash,
		CreatedAt:  rec.CreatedAt,
		Context:    rec.Context,
		Device:     rec.Device,
		OS:         rec.OS,
		Browser:    rec.Browser,
	}
}

func (d document) record() (visit.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return visit.Record{}, err
	}
	return visit.Record{
		ID:         id,
		UserID:     d.UserID,
		Timestamp:  d.Timestamp,
		SessionKey: d.SessionKey,
		RemoteAddr: d.RemoteAddr,
		UserAgent:  d.UserAgent,
		Hash:       d.Hash,
		CreatedAt:  d.CreatedAt,
		Context:    normalizeContext(d.Context),
		Device:     d.Device,
		OS:         d.OS,
		Browser:    d.Browser,
	}, nil
}

// normalizeContext turns the driver's nested bson.D / bson.A values back into
// map[string]any / []any, the shape the other stores return. Numbers keep their
// BSON widths (int32, int64, float64).
func normalizeContext(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.M:
		return normalizeContext(t)
	case map[string]any:
		return normalizeContext(t)
	case bson.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	default:
		return v
	}
}

func normalizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = normalizeValue(v)
	}
	return out
}

// filterDoc renders f as a query document. Limit is applied by the caller.
func filterDoc(f visit.Filter) bson.D {
	doc := bson.D{}
	if f.UserID != "" {
		doc = append(doc, bson.E{Key: "user_id", Value: f.UserID})
	}
	if f.SessionKey != "" {
		doc = append(doc, bson.E{Key: "session_key", Value: f.SessionKey})
	}
	if f.RemoteAddr != "" {
		doc = append(doc, bson.E{Key: "remote_addr", Value: f.RemoteAddr})
	}

	ts := bson.D{}
	if !f.From.IsZero() {
		ts = append(ts, bson.E{Key: "$gte", Value: f.From})
	}
	if !f.To.IsZero() {
		ts = append(ts, bson.E{Key: "$lt", Value: f.To})
	}
	if len(ts) > 0 {
		doc = append(doc, bson.E{Key: "timestamp", Value: ts})
	}
	return doc
}
