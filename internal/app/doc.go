// Package app implements the canvas app's submission flow.
//
// The Dispatcher is stateless: each /submit carries the id of the clicked
// component and the current form values, and the next screen is derived from
// those alone.
//
//	switch_to_complete          -> complete form
//	switch_to_lite              -> lite form
//	send_lite_button (blank)    -> lite form with error banner
//	send_lite_button            -> forward + store -> success
//	send_complete_button (blank)-> complete form
//	send_complete_button        -> forward details + store -> success
//	send_button (blank)         -> single form with error banner
//	send_button                 -> forward + store -> success
//	reset_button / anything else-> initial form
//
// Example Usage:
//
//	d := app.NewDispatcher(forwarderClient, messageStore, logger).WithMetrics(metrics)
//	resp := d.Dispatch(ctx, req)
package app
