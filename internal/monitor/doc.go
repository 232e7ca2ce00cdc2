// Package monitor contains the two background loops of the service: the
// calendar sync that rebuilds the day's session skeleton, and the
// attendance monitor that enriches active sessions with live conference
// state. Both run under a shared cron scheduler and publish through the
// session store.
package monitor
