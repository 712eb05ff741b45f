package domain

// KeyPrefix namespaces every key-value store entry owned by this service.
const KeyPrefix = "ragdex:"
