package controllers

import "time"

// Swappable in tests.
var timeNow = time.Now
