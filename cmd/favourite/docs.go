package main

// @title Favourite Service API
// @version 1.0
// @description Favourite microservice of the e-commerce backend. Routes live under /favourite-service/api.

// @license.name MIT

// @host localhost:8800
// @BasePath /favourite-service

// @tag.name Health
// @tag.description Health check endpoints
