package main

import "jobmarket/internal/app"

// @title           RMU Part-Time Jobs API
// @version         1.0
// @description     Campus job marketplace: employers post part-time jobs, students apply.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
