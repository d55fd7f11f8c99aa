package Controllers

import (
	"DocTools/Messaging"
	"DocTools/Worker"
)

// Set by main before the router starts serving.
var (
	MessagingHandle *Messaging.Handle
	PushWorker      *Worker.Worker
)
