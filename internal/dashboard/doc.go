// Package dashboard holds the behaviour of the dashboard independent of any
// particular screen.
//
// A Controller runs refresh attempts and searches. It writes everything it
// wants shown through the Surface interface: the table, the status
// indicator, the loading overlay, the error and empty panels, the last
// updated time and the busy animation of the refresh control. Board is the
// in-memory Surface read by both the terminal UI and the web view.
//
// Refresh attempts may overlap. Each one takes a generation from the
// state.Store and only the latest generation may change the retained
// dataset or the panels; older results are dropped, though their loading
// and spinner cleanup still runs.
//
// Match and BuildTable are pure and shared by the controller and the
// dump command.
package dashboard
