package main

// @title Product Service API
// @version 1.0
// @description Product microservice of the e-commerce backend. Routes live under /product-service/api.

// @license.name MIT

// @host localhost:8500
// @BasePath /product-service

// @tag.name Health
// @tag.description Health check endpoints
