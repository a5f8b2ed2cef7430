// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field in the
// schedule ("0 */15 * * * *" runs every fifteen minutes).
//
// # Available Jobs
//
// OverdueInvoiceJob marks Pending invoices whose due date has passed as
// Overdue, one transaction per batch.
//
// # Usage
//
//	sweep := jobs.NewOverdueInvoiceJob(handler, "0 */15 * * * *", 100, logger, m)
//	jobManager := jobs.NewJobManager(sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
