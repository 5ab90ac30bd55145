package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/telemetry/progrock"
	"go.trai.ch/sci/internal/app"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestComponents_CloseLogsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	recorder := progrock.New()

	_, ran := recorder.Record(context.Background(), "echo hej > o:hej.txt")
	ran.Complete(nil)
	_, failed := recorder.Record(context.Background(), "exit 3")
	failed.Complete(errors.New("exit status 3"))

	log.EXPECT().Info("1 executed, 0 skipped, 1 failed")

	c := &app.Components{Logger: log, Telemetry: recorder}
	require.NoError(t, c.Close())
}

func TestComponents_CloseQuietWithoutInvocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)

	telemetry.EXPECT().Close().Return(nil)
	telemetry.EXPECT().Summary().Return(domain.RunSummary{})

	c := &app.Components{Logger: log, Telemetry: telemetry}
	require.NoError(t, c.Close())
}

func TestComponents_CloseWithoutTelemetry(t *testing.T) {
	require.NoError(t, (&app.Components{}).Close())
}
