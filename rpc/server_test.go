package rpc

import (
	"context"
	"io"
	"testing"

	"google.golang.org/grpc/metadata"

	testifyassert "github.com/stretchr/testify/assert"

	"github.com/go-mvccdb/mvccdb/errors"
	"github.com/go-mvccdb/mvccdb/mvcc"
	"github.com/go-mvccdb/mvccdb/proto/mvccpb"
	"github.com/go-mvccdb/mvccdb/types"
)

// fakeStream drives Server.Session without a real network connection: it
// satisfies mvccpb.EngineSessionServer directly over two channels instead
// of encoding through grpc.ServerStream's SendMsg/RecvMsg.
type fakeStream struct {
	in  chan *mvccpb.Command
	out chan *mvccpb.Result
}

func newFakeStream() *fakeStream {
	return &fakeStream{
		in:  make(chan *mvccpb.Command),
		out: make(chan *mvccpb.Result, 1),
	}
}

func (s *fakeStream) Send(r *mvccpb.Result) error {
	s.out <- r
	return nil
}

func (s *fakeStream) Recv() (*mvccpb.Command, error) {
	cmd, ok := <-s.in
	if !ok {
		return nil, io.EOF
	}
	return cmd, nil
}

func (s *fakeStream) send(verb string, args ...string) *mvccpb.Result {
	s.in <- &mvccpb.Command{Verb: verb, Args: args}
	return <-s.out
}

func (s *fakeStream) close() { close(s.in) }

func (s *fakeStream) SetHeader(metadata.MD) error  { return nil }
func (s *fakeStream) SendHeader(metadata.MD) error { return nil }
func (s *fakeStream) SetTrailer(metadata.MD)       {}
func (s *fakeStream) Context() context.Context     { return context.Background() }
func (s *fakeStream) SendMsg(interface{}) error    { panic("unused: fakeStream bypasses the codec") }
func (s *fakeStream) RecvMsg(interface{}) error    { panic("unused: fakeStream bypasses the codec") }

func TestSessionExecutesCommandsAgainstOneConnection(t *testing.T) {
	db := mvcc.NewDatabase(types.Serializable)
	srv := NewServer(db)
	stream := newFakeStream()

	done := make(chan error, 1)
	go func() { done <- srv.Session(stream) }()

	testifyassert.NotEmpty(t, stream.send("begin").Value)
	testifyassert.Empty(t, stream.send("set", "k", "v").Err)

	got := stream.send("get", "k")
	testifyassert.Empty(t, got.Err)
	testifyassert.Equal(t, "v", got.Value)

	testifyassert.Empty(t, stream.send("commit").Err)

	stream.close()
	testifyassert.NoError(t, <-done)
}

func TestSessionTranslatesConflictErrorsWithCode(t *testing.T) {
	db := mvcc.NewDatabase(types.Snapshot)

	winner := NewServer(db)
	winnerStream := newFakeStream()
	go func() { _ = winner.Session(winnerStream) }()

	loser := NewServer(db)
	loserStream := newFakeStream()
	go func() { _ = loser.Session(loserStream) }()

	winnerStream.send("begin")
	loserStream.send("begin")

	winnerStream.send("set", "x", "1")
	testifyassert.Empty(t, winnerStream.send("commit").Err)
	winnerStream.close()

	loserStream.send("set", "x", "2")
	result := loserStream.send("commit")
	loserStream.close()

	testifyassert.NotEmpty(t, result.Err)
	testifyassert.True(t, errors.IsConflictErr(ResultToError(result)))
}

func TestSessionTranslatesNotExistsErrorWithCode(t *testing.T) {
	db := mvcc.NewDatabase(types.ReadCommitted)
	srv := NewServer(db)
	stream := newFakeStream()
	go func() { _ = srv.Session(stream) }()

	stream.send("begin")
	result := stream.send("get", "missing")
	stream.close()

	testifyassert.NotEmpty(t, result.Err)
	testifyassert.True(t, errors.IsNotExistsErr(ResultToError(result)))
}

func TestResultToErrorNilOnSuccess(t *testing.T) {
	testifyassert.NoError(t, ResultToError(&mvccpb.Result{Value: "ok"}))
}
