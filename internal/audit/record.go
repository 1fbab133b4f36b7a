// Package audit keeps the append-only history of inventory lookups and changes.
package audit

import (
	"context"
	"time"
)

// Action identifies the kind of event an audit record describes.
type Action string

const (
	ActionSearch      Action = "consultar"
	ActionView        Action = "ver_detalle"
	ActionUpdate      Action = "actualizar"
	ActionCreate      Action = "crear"
	ActionAdminUpdate Action = "actualizar_admin"
	ActionDelete      Action = "borrar"
)

// AllCodes is written in the codigo column of an unfiltered search.
const AllCodes = "ALL"

// TimestampLayout is ISO-8601 in UTC with microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Header is the fixed column order of the history file.
var Header = []string{
	"timestamp",
	"action",
	"producto_id",
	"codigo",
	"nombre",
	"old_cantidad",
	"new_cantidad",
	"old_ubicacion",
	"new_ubicacion",
	"results_count",
}

// Record is one immutable audit fact. It snapshots the product at the time
// of the event; fields that do not apply to an action stay empty.
type Record struct {
	Timestamp    string `json:"timestamp"`
	Action       Action `json:"action"`
	ProductID    string `json:"producto_id"`
	Code         string `json:"codigo"`
	Name         string `json:"nombre"`
	OldQuantity  string `json:"old_cantidad"`
	NewQuantity  string `json:"new_cantidad"`
	OldLocation  string `json:"old_ubicacion"`
	NewLocation  string `json:"new_ubicacion"`
	ResultsCount string `json:"results_count"`
}

// Row returns the record's values in Header order.
func (r Record) Row() []string {
	return []string{
		r.Timestamp,
		string(r.Action),
		r.ProductID,
		r.Code,
		r.Name,
		r.OldQuantity,
		r.NewQuantity,
		r.OldLocation,
		r.NewLocation,
		r.ResultsCount,
	}
}

func recordFromRow(columns map[string]int, row []string) Record {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	return Record{
		Timestamp:    get("timestamp"),
		Action:       Action(get("action")),
		ProductID:    get("producto_id"),
		Code:         get("codigo"),
		Name:         get("nombre"),
		OldQuantity:  get("old_cantidad"),
		NewQuantity:  get("new_cantidad"),
		OldLocation:  get("old_ubicacion"),
		NewLocation:  get("new_ubicacion"),
		ResultsCount: get("results_count"),
	}
}

// Logger appends audit records. Implementations must never fail the caller:
// write errors are handled internally.
type Logger interface {
	Append(ctx context.Context, rec Record)
}

// Reader returns the recorded history, oldest first.
type Reader interface {
	ReadAll(ctx context.Context) ([]Record, error)
}

// Now formats t the way the history file stores timestamps.
func Now(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Store is a Logger whose history can be read back.
type Store interface {
	Logger
	Reader
}
