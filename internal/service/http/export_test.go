package httpapi

// RequestHash открыт для внешних тестов пакета.
var RequestHash = requestHash
