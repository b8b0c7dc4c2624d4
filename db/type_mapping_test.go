package db

import (
	"reflect"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"
)

// rowScanner is a gocql.Scanner over a single row, values are assigned the way the driver does
type rowScanner struct {
	row  []interface{}
	done bool
}

func (s *rowScanner) Next() bool {
	next := !s.done
	s.done = true
	return next
}

func (s *rowScanner) Scan(dest ...interface{}) error {
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if s.row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		value := reflect.ValueOf(s.row[i])
		if !value.Type().AssignableTo(target.Type()) {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(value)
			value = ptr
		}
		target.Set(value)
	}
	return nil
}

func (s *rowScanner) Err() error {
	return nil
}

func columnInfo(name string, typ gocql.Type) gocql.ColumnInfo {
	return gocql.ColumnInfo{Keyspace: "store", Table: "orders", Name: name, TypeInfo: gocql.NewNativeType(4, typ, "")}
}

func TestMapScan(t *testing.T) {
	date := time.Date(2015, 12, 20, 18, 45, 0, 0, time.UTC)
	columns := []gocql.ColumnInfo{
		columnInfo("id", gocql.TypeInt),
		columnInfo("description", gocql.TypeText),
		columnInfo("date", gocql.TypeTimestamp),
		columnInfo("price", gocql.TypeDouble),
		columnInfo("total", gocql.TypeDecimal),
		columnInfo("views", gocql.TypeBigInt),
		columnInfo("paid", gocql.TypeBoolean),
	}
	scanner := &rowScanner{row: []interface{}{1, nil, date, 10.5, inf.NewDec(125, 2), int64(7), true}}

	require.True(t, scanner.Next())
	row, err := mapScan(scanner, columns)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":          1,
		"description": nil,
		"date":        date,
		"price":       10.5,
		"total":       *inf.NewDec(125, 2),
		"views":       int64(7),
		"paid":        true,
	}, row)
}

func TestMapScanUnsupportedType(t *testing.T) {
	_, err := mapScan(&rowScanner{row: []interface{}{nil}}, []gocql.ColumnInfo{columnInfo("blob", gocql.TypeBlob)})
	assert.Error(t, err)
}

func TestAllocateForType(t *testing.T) {
	list := gocql.CollectionType{
		NativeType: gocql.NewNativeType(4, gocql.TypeList, ""),
		Elem:       gocql.NewNativeType(4, gocql.TypeText, ""),
	}
	assert.IsType(t, new([]string), allocateForType(list))

	m := gocql.CollectionType{
		NativeType: gocql.NewNativeType(4, gocql.TypeMap, ""),
		Key:        gocql.NewNativeType(4, gocql.TypeUUID, ""),
		Elem:       gocql.NewNativeType(4, gocql.TypeTimestamp, ""),
	}
	assert.IsType(t, new(map[string]time.Time), allocateForType(m))

	assert.IsType(t, new(*time.Time), allocateForType(gocql.NewNativeType(4, gocql.TypeDate, "")))
	assert.Nil(t, allocateForType(gocql.NewNativeType(4, gocql.TypeBlob, "")))
}
