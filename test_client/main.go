package main

import (
	"context"
	"io"
	"log"

	"github.com/shaharia-lab/rpcwire"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// In-process round trip: a client goroutine sends a request through a pipe,
// a server goroutine answers it, and the client unwraps the result.
func main() {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	logger := rpcwire.NewLogrusLogger(base)

	serverIn, clientOut := io.Pipe()
	clientIn, serverOut := io.Pipe()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		reader := rpcwire.NewStreamReader(serverIn, rpcwire.WithLogger(logger))
		writer := rpcwire.NewWriter(serverOut, rpcwire.WithLogger(logger))
		defer serverOut.Close()

		req, _, err := reader.ReadRequest()
		if err != nil {
			return err
		}
		res, berr := rpcwire.NewResponse(req.ID).WithResult("pong")
		if berr != nil {
			return berr
		}
		if _, werr := writer.WriteMessage(res); werr != nil {
			return werr
		}
		return nil
	})

	g.Go(func() error {
		writer := rpcwire.NewTracedWriter(rpcwire.NewWriter(clientOut, rpcwire.WithLogger(logger)))
		reader := rpcwire.NewTracedStreamReader(rpcwire.NewStreamReader(clientIn, rpcwire.WithLogger(logger)))
		defer clientOut.Close()

		if _, err := writer.WriteMessage(ctx, rpcwire.NewRequest("ping")); err != nil {
			return err
		}

		msg, _, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		res, nerr := rpcwire.AsResponse(msg)
		if nerr != nil {
			return nerr
		}
		result, uerr := res.Unwrap()
		if uerr != nil {
			return uerr
		}
		base.Infof("result: %s", result)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("round trip failed: %v", err)
	}
}
