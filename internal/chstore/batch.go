package chstore

import (
	"github.com/ClickHouse/ch-go/proto"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// MeasurementBatch holds column data for native insert
type MeasurementBatch struct {
	Session *proto.ColStr
	RowNum  *proto.ColUInt32
	Time    *proto.ColStr
	Values  [solar.FieldCount - 1]*proto.ColFloat64
}

func NewMeasurementBatch() *MeasurementBatch {
	b := &MeasurementBatch{
		Session: new(proto.ColStr),
		RowNum:  new(proto.ColUInt32),
		Time:    new(proto.ColStr),
	}
	for i := range b.Values {
		b.Values[i] = new(proto.ColFloat64)
	}
	return b
}

func (b *MeasurementBatch) Reset() {
	b.Session.Reset()
	b.RowNum.Reset()
	b.Time.Reset()
	for _, col := range b.Values {
		col.Reset()
	}
}

func (b *MeasurementBatch) Len() int {
	return b.Session.Rows()
}

// Input returns the block in insertColumns order.
func (b *MeasurementBatch) Input() proto.Input {
	input := proto.Input{
		{Name: "session", Data: b.Session},
		{Name: "row_num", Data: b.RowNum},
		{Name: "time", Data: b.Time},
	}
	for i, col := range b.Values {
		input = append(input, proto.InputColumn{Name: measurementColumns[i+1], Data: col})
	}
	return input
}

func (b *MeasurementBatch) AddRecord(session string, rowNum uint32, r *solar.Record) {
	b.Session.Append(session)
	b.RowNum.Append(rowNum)
	b.Time.Append(r.Time)
	for i, v := range r.Numbers() {
		b.Values[i].Append(v)
	}
}
