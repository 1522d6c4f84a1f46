package main

import (
	"travel-assistant/interfaces/lambda/gateway"
)

func main() {
	gateway.Start(gateway.NewBookingQAHandler)
}
