package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/shaharia-lab/rpcwire"
)

// Echo peer: reads framed messages from stdin and answers every request
// with its own method name. Pipe it to the client under ../test_client.
func main() {
	logger := rpcwire.NewZerologLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())

	reader := rpcwire.NewStreamReader(os.Stdin, rpcwire.WithLogger(logger))
	writer := rpcwire.NewWriter(os.Stdout, rpcwire.WithLogger(logger))

	for {
		msg, _, err := reader.ReadMessage()
		if err != nil {
			logger.WithErr(err).Error("read failed, shutting down")
			return
		}

		switch msg.Kind() {
		case rpcwire.KindRequest:
			req, nerr := rpcwire.AsRequest(msg)
			if nerr != nil {
				continue
			}
			res, berr := rpcwire.NewResponse(req.ID).WithResult(map[string]interface{}{
				"echo": req.Method,
			})
			if berr != nil {
				logger.WithErr(berr).Error("building response failed")
				continue
			}
			if _, werr := writer.WriteMessage(res); werr != nil {
				logger.WithErr(werr).Error("write failed, shutting down")
				return
			}
		case rpcwire.KindNotification:
			logger.WithFields(map[string]interface{}{"kind": "notification"}).Info("message received")
		default:
			logger.WithFields(map[string]interface{}{"kind": "response"}).Info("message received")
		}
	}
}
