package cron

import (
	"context"

	"github.com/adilzhan-b/lingualink/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartReconcileCron schedules the nightly friend-list repair.
func StartReconcileCron(reconciler *jobs.FriendReconciler) {
	c := cron.New()

	c.AddFunc("@daily", func() {
		if err := reconciler.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Friend list reconciliation failed")
		}
	})

	c.Start()
}
