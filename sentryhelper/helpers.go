// Package sentryhelper keeps Sentry scope isolated per inbound chat
// event, so breadcrumbs from interleaved handlers don't bleed into each
// other's reports.
package sentryhelper

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
)

type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartEventTransaction clones the hub and opens a transaction for one
// chat event (a message or a button press).
func StartEventTransaction(ctx context.Context, eventType string, userID int64) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)

	transaction := sentry.StartTransaction(ctx,
		fmt.Sprintf("bot.event.%s", eventType),
		sentry.WithOpName("bot.event"),
		sentry.WithTransactionSource(sentry.SourceTask),
	)
	transaction.SetTag("event_type", eventType)
	transaction.SetTag("user_id", fmt.Sprintf("%d", userID))

	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext returns the per-event hub, falling back to the global
// one when the context carries none.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

func CaptureException(ctx context.Context, err error) *sentry.EventID {
	return HubFromContext(ctx).CaptureException(err)
}

func CaptureMessage(ctx context.Context, message string) *sentry.EventID {
	return HubFromContext(ctx).CaptureMessage(message)
}

func AddBreadcrumb(ctx context.Context, breadcrumb *sentry.Breadcrumb) {
	HubFromContext(ctx).AddBreadcrumb(breadcrumb, nil)
}
