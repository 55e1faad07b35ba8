// Command companies-stream is the Lambda entrypoint that audits the company
// table's DynamoDB stream.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/companies/internal/logger"
	"github.com/jacentio/companies/stream"
)

func main() {
	log := logger.New(logger.Config{
		Env:   os.Getenv("APP_ENV"),
		Level: os.Getenv("LOG_LEVEL"),
	})

	h := stream.NewHandler(log.With().Str("component", "stream").Logger())
	lambda.Start(h.HandleChanges)
}
