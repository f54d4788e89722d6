package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failing struct{}

func (failing) Publish(context.Context, Message) error { return errors.New("broker down") }

func TestMultiPublishesToEverySink(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, nil, failing{}, b}

	err := m.Publish(context.Background(), NewMessage(TableCreated, map[string]int{"number": 1}))

	assert.EqualError(t, err, "broker down")
	assert.Equal(t, []string{TableCreated}, a.Names())
	assert.Equal(t, []string{TableCreated}, b.Names())
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), NewMessage(TableDeleted, nil)))
}
