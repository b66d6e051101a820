package session

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("session")

var (
	roundsFinished     metric.Int64Counter
	activationsIgnored metric.Int64Counter
	liveSessions       metric.Int64UpDownCounter
)

func init() {
	var err error

	roundsFinished, err = meter.Int64Counter("tictactoe.rounds.finished",
		metric.WithDescription("Rounds ended by a win or a draw."),
		metric.WithUnit("{round}"),
	)
	if err != nil {
		otel.Handle(err)
	}

	activationsIgnored, err = meter.Int64Counter("tictactoe.activations.ignored",
		metric.WithDescription("Cell activations dropped because the cell was taken or the round was over."),
		metric.WithUnit("{activation}"),
	)
	if err != nil {
		otel.Handle(err)
	}

	liveSessions, err = meter.Int64UpDownCounter("tictactoe.sessions.live",
		metric.WithDescription("Browser sessions currently connected."),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		otel.Handle(err)
	}
}
