package setup

// schemaDDL creates every table the API needs. Statements are idempotent
// so the endpoint can be hit repeatedly on a fresh environment.
const schemaDDL = `
DO $$ BEGIN
	CREATE TYPE user_role AS ENUM ('customer', 'owner', 'admin');
EXCEPTION WHEN duplicate_object THEN NULL; END $$;

DO $$ BEGIN
	CREATE TYPE booking_status AS ENUM ('pending', 'confirmed', 'cancelled', 'completed');
EXCEPTION WHEN duplicate_object THEN NULL; END $$;

DO $$ BEGIN
	CREATE TYPE rental_status AS ENUM ('reserved', 'active', 'returned', 'cancelled');
EXCEPTION WHEN duplicate_object THEN NULL; END $$;

DO $$ BEGIN
	CREATE TYPE payment_status AS ENUM ('pending', 'paid', 'failed', 'refunded');
EXCEPTION WHEN duplicate_object THEN NULL; END $$;

DO $$ BEGIN
	CREATE TYPE rental_unit AS ENUM ('hour', 'day');
EXCEPTION WHEN duplicate_object THEN NULL; END $$;

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	phone VARCHAR(32),
	role user_role NOT NULL DEFAULT 'customer',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	last_login_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS facilities (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name VARCHAR(255) NOT NULL,
	description TEXT,
	address VARCHAR(512) NOT NULL,
	city VARCHAR(128) NOT NULL,
	amenities TEXT[] NOT NULL DEFAULT '{}',
	phone VARCHAR(32),
	cover_url VARCHAR(512),
	rating_score NUMERIC(3,2) NOT NULL DEFAULT 0,
	reviews_count INTEGER NOT NULL DEFAULT 0,
	is_published BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_facilities_owner ON facilities(owner_id);
CREATE INDEX IF NOT EXISTS idx_facilities_city ON facilities(city);

CREATE TABLE IF NOT EXISTS courts (
	id UUID PRIMARY KEY,
	facility_id UUID NOT NULL REFERENCES facilities(id) ON DELETE CASCADE,
	name VARCHAR(255) NOT NULL,
	sport VARCHAR(32) NOT NULL,
	surface VARCHAR(64),
	indoor BOOLEAN NOT NULL DEFAULT FALSE,
	price_per_hour BIGINT NOT NULL,
	open_hour SMALLINT NOT NULL DEFAULT 8,
	close_hour SMALLINT NOT NULL DEFAULT 22,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_courts_facility ON courts(facility_id);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	court_id UUID NOT NULL REFERENCES courts(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	starts_at TIMESTAMPTZ NOT NULL,
	ends_at TIMESTAMPTZ NOT NULL,
	status booking_status NOT NULL DEFAULT 'pending',
	total_price BIGINT NOT NULL,
	note TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (starts_at < ends_at)
);
CREATE INDEX IF NOT EXISTS idx_bookings_court_time ON bookings(court_id, starts_at, ends_at);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	facility_id UUID NOT NULL REFERENCES facilities(id) ON DELETE CASCADE,
	name VARCHAR(255) NOT NULL,
	description TEXT,
	category VARCHAR(64),
	price_per_unit BIGINT NOT NULL,
	rental_unit rental_unit NOT NULL DEFAULT 'hour',
	stock_total INTEGER NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_facility ON products(facility_id);

CREATE TABLE IF NOT EXISTS rentals (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	booking_id UUID REFERENCES bookings(id) ON DELETE SET NULL,
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	starts_at TIMESTAMPTZ NOT NULL,
	ends_at TIMESTAMPTZ NOT NULL,
	unit_count INTEGER NOT NULL,
	total_price BIGINT NOT NULL,
	status rental_status NOT NULL DEFAULT 'reserved',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (starts_at < ends_at)
);
CREATE INDEX IF NOT EXISTS idx_rentals_product_time ON rentals(product_id, starts_at, ends_at);
CREATE INDEX IF NOT EXISTS idx_rentals_user ON rentals(user_id);

CREATE TABLE IF NOT EXISTS reviews (
	id UUID PRIMARY KEY,
	facility_id UUID NOT NULL REFERENCES facilities(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (facility_id, user_id)
);

CREATE TABLE IF NOT EXISTS payments (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	booking_id UUID REFERENCES bookings(id) ON DELETE SET NULL,
	rental_id UUID REFERENCES rentals(id) ON DELETE SET NULL,
	amount BIGINT NOT NULL,
	currency VARCHAR(8) NOT NULL DEFAULT 'eur',
	status payment_status NOT NULL DEFAULT 'pending',
	provider VARCHAR(16) NOT NULL DEFAULT 'mock',
	provider_ref VARCHAR(64) NOT NULL UNIQUE,
	paid_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (booking_id IS NOT NULL OR rental_id IS NOT NULL)
);
CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id);

CREATE TABLE IF NOT EXISTS uploads (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	key VARCHAR(512) NOT NULL UNIQUE,
	content_type VARCHAR(64) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// resetDDL drops everything schemaDDL creates
const resetDDL = `
DROP TABLE IF EXISTS uploads, payments, reviews, rentals, products, bookings, courts, facilities, users CASCADE;
DROP TYPE IF EXISTS rental_unit, payment_status, rental_status, booking_status, user_role CASCADE;
`
