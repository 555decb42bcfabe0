package mapper

import (
	"bytes"
	"database/sql"
	"fmt"
	"reflect"

	"object-mapper/internal/match"
)

var (
	rowsType       = reflect.TypeFor[*sql.Rows]()
	dataRecordType = reflect.TypeFor[DataRecord]()
)

// DataRecord is one row read from *sql.Rows, keyed by column name.
type DataRecord map[string]any

// Lookup finds a column by name ignoring case and separators, so both
// customer_name and CustomerName match the CustomerName member.
func (r DataRecord) Lookup(name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}

	normalized := match.NormalizeIdent(name)
	for column, v := range r {
		if match.NormalizeIdent(column) == normalized {
			return v, true
		}
	}

	return nil, false
}

// DataReaderMapper reads *sql.Rows into a slice of structs, or the first row into one struct.
// The rows are consumed and closed.
type DataReaderMapper struct{}

func (DataReaderMapper) IsMatch(ctx *ResolutionContext) bool {
	if ctx.SourceType() != rowsType {
		return false
	}

	dst := ctx.DestinationType()
	if dst.Kind() == reflect.Slice {
		dst = dst.Elem()
	}

	_, base := ptrDepthAndBase(dst)

	return base.Kind() == reflect.Struct
}

func (DataReaderMapper) Map(ctx *ResolutionContext, runner Runner) (reflect.Value, error) {
	dstType := ctx.DestinationType()

	if ctx.IsSourceNil() {
		return reflect.Zero(dstType), nil
	}

	rows := unwrapInterface(ctx.SourceValue()).Interface().(*sql.Rows)
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return reflect.Value{}, fmt.Errorf("read columns: %w", err)
	}

	single := dstType.Kind() != reflect.Slice

	res := reflect.Zero(dstType)
	if !single {
		res = reflect.MakeSlice(dstType, 0, 0)
	}

	for index := 0; rows.Next(); index++ {
		record, err := scanRecord(rows, columns)
		if err != nil {
			return reflect.Value{}, err
		}

		if single {
			return mapRecord(ctx, runner, record, dstType, -1)
		}

		v, err := mapRecord(ctx, runner, record, dstType.Elem(), index)
		if err != nil {
			return reflect.Value{}, err
		}

		res = reflect.Append(res, v)
	}

	if err := rows.Err(); err != nil {
		return reflect.Value{}, fmt.Errorf("read rows: %w", err)
	}

	return res, nil
}

func scanRecord(rows *sql.Rows, columns []string) (DataRecord, error) {
	values := make([]any, len(columns))
	targets := make([]any, len(columns))

	for i := range values {
		targets[i] = &values[i]
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	record := make(DataRecord, len(columns))
	for i, column := range columns {
		// drivers may reuse byte buffers between rows
		if b, ok := values[i].([]byte); ok {
			values[i] = bytes.Clone(b)
		}

		record[column] = values[i]
	}

	return record, nil
}

func mapRecord(ctx *ResolutionContext, runner Runner, record DataRecord, dstType reflect.Type, index int) (reflect.Value, error) {
	_, base := ptrDepthAndBase(dstType)
	obj := reflect.New(base)

	recordCtx := ctx
	if index >= 0 {
		recordCtx = ctx.CreateElementContext(nil, reflect.ValueOf(record), dataRecordType, dstType, index)
	}

	config := runner.ConfigurationProvider()

	for i, member := range Members(base) {
		if !member.CanWrite() {
			continue
		}

		column, ok := record.Lookup(member.Name())
		if !ok {
			continue
		}

		value := reflect.ValueOf(column)
		srcType := runtimeType(value, anyType)
		pm := newPropertyMap(member, i)

		v, err := runner.MapContext(recordCtx.CreateMemberContext(
			config.FindTypeMapFor(value, srcType, member.Type()), value, srcType, pm))
		if err != nil {
			return reflect.Value{}, err
		}

		if err := member.SetValue(obj, v); err != nil {
			return reflect.Value{}, fmt.Errorf("set %s: %w", member.Name(), err)
		}
	}

	if dstType.Kind() == reflect.Ptr {
		return obj, nil
	}

	return obj.Elem(), nil
}
