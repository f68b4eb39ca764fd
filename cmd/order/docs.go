package main

// @title Order Service API
// @version 1.0
// @description Order microservice of the e-commerce backend. Routes live under /order-service/api.

// @license.name MIT

// @host localhost:8300
// @BasePath /order-service

// @tag.name Health
// @tag.description Health check endpoints
