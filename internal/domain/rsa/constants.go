package rsa

// PublicExponent is the fixed public exponent used for every generated key.
const PublicExponent = 65537

// PrimalityTestRounds is the module-wide accuracy constant for the
// probabilistic primality test applied to prime factor candidates.
const PrimalityTestRounds uint = 20

// KeyTypeFull identifies a complete key with all five factors.
const KeyTypeFull = "full"

// KeyTypePublic identifies the (n, d) projection of a key.
const KeyTypePublic = "public"

// KeyTypePrivate identifies the (n, e) projection of a key.
const KeyTypePrivate = "private"
