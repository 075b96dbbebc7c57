package dashboard

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestRecorder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	buf := nopCloser{&bytes.Buffer{}}
	rec, err := NewRecorder(buf, 4, 2, clock)
	require.NoError(t, err)

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(4, 2)
	s.SetContent(0, 0, 'h', nil, tcell.StyleDefault)
	s.SetContent(1, 0, 'i', nil, tcell.StyleDefault)

	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, rec.RecordFrame(s))
	require.NoError(t, rec.Close())

	sc := bufio.NewScanner(buf)
	require.True(t, sc.Scan())
	var header map[string]any
	require.NoError(t, json.Unmarshal(sc.Bytes(), &header))
	assert.EqualValues(t, 2, header["version"])
	assert.EqualValues(t, 4, header["width"])

	require.True(t, sc.Scan())
	var event []any
	require.NoError(t, json.Unmarshal(sc.Bytes(), &event))
	require.Len(t, event, 3)
	assert.InDelta(t, 1.5, event[0], 1e-9)
	assert.Equal(t, "o", event[1])
	assert.Equal(t, "\x1b[Hhi  \r\n    ", event[2])
}
