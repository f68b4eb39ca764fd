package main

// @title Payment Service API
// @version 1.0
// @description Payment microservice of the e-commerce backend. Routes live under /payment-service/api.

// @license.name MIT

// @host localhost:8400
// @BasePath /payment-service

// @tag.name Health
// @tag.description Health check endpoints
