//go:build integration

package containers

// Schema is the full application schema, applied to fresh test containers.
const Schema = `
CREATE TABLE assoc_member (
	assoc_member_id BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	contact_number  TEXT NOT NULL,
	squad_number    TEXT NOT NULL UNIQUE,
	joined_at       TIMESTAMPTZ NOT NULL,
	blacklisted     BOOLEAN NOT NULL DEFAULT FALSE,
	created_by      TEXT NOT NULL,
	updated_by      TEXT,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE payment_method (
	payment_method_id BIGSERIAL PRIMARY KEY,
	name              TEXT NOT NULL UNIQUE,
	description       TEXT
);

CREATE TABLE levy_fine (
	levy_fine_id      BIGSERIAL PRIMARY KEY,
	assoc_member_id   BIGINT NOT NULL REFERENCES assoc_member,
	amount            DOUBLE PRECISION NOT NULL,
	reason            TEXT NOT NULL,
	status            TEXT NOT NULL,
	payment_method_id BIGINT REFERENCES payment_method,
	receipt_number    TEXT,
	created_by        TEXT NOT NULL,
	updated_by        TEXT,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE levy_payment (
	levy_payment_id   BIGSERIAL PRIMARY KEY,
	assoc_member_id   BIGINT NOT NULL REFERENCES assoc_member,
	week_start_date   TIMESTAMPTZ NOT NULL,
	week_end_date     TIMESTAMPTZ NOT NULL,
	amount            DOUBLE PRECISION NOT NULL,
	status            TEXT NOT NULL,
	payment_method_id BIGINT REFERENCES payment_method,
	receipt_number    TEXT,
	created_by        TEXT NOT NULL,
	updated_by        TEXT,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE bank_payment (
	bank_payment_id       BIGSERIAL PRIMARY KEY,
	assoc_member_id       BIGINT NOT NULL REFERENCES assoc_member,
	levy_payment_id       BIGINT REFERENCES levy_payment,
	levy_fine_id          BIGINT REFERENCES levy_fine,
	bank_name             TEXT NOT NULL,
	branch_code           TEXT,
	account_number        TEXT,
	transaction_reference TEXT NOT NULL UNIQUE,
	amount                DOUBLE PRECISION NOT NULL,
	payment_date          TIMESTAMPTZ NOT NULL,
	verified              BOOLEAN NOT NULL DEFAULT FALSE,
	verified_by           TEXT,
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE receipt (
	receipt_id      BIGSERIAL PRIMARY KEY,
	assoc_member_id BIGINT NOT NULL REFERENCES assoc_member,
	levy_payment_id BIGINT REFERENCES levy_payment,
	levy_fine_id    BIGINT REFERENCES levy_fine,
	bank_payment_id BIGINT REFERENCES bank_payment,
	receipt_number  TEXT NOT NULL UNIQUE,
	issued_by       TEXT NOT NULL,
	issued_date     TIMESTAMPTZ NOT NULL
);

CREATE TABLE driver (
	driver_id      BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	license_number TEXT NOT NULL UNIQUE,
	contact_number TEXT,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE route (
	route_id    BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	start_point TEXT NOT NULL,
	end_point   TEXT NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE taxi (
	taxi_id      BIGSERIAL PRIMARY KEY,
	plate_number TEXT NOT NULL UNIQUE,
	model        TEXT,
	driver_id    BIGINT REFERENCES driver,
	route_id     BIGINT REFERENCES route,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE membership_application (
	application_id       BIGSERIAL PRIMARY KEY,
	applicant_name       TEXT NOT NULL,
	contact_number       TEXT NOT NULL,
	application_status   TEXT NOT NULL,
	route_id             BIGINT REFERENCES route,
	secretary_reviewed   BOOLEAN NOT NULL DEFAULT FALSE,
	chairperson_reviewed BOOLEAN NOT NULL DEFAULT FALSE,
	decision_notes       TEXT,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
);

CREATE TABLE membership_application_document (
	document_id    BIGSERIAL PRIMARY KEY,
	application_id BIGINT NOT NULL REFERENCES membership_application,
	document_type  TEXT NOT NULL,
	document_path  TEXT NOT NULL,
	uploaded_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE notification (
	notification_id   BIGSERIAL PRIMARY KEY,
	assoc_member_id   BIGINT NOT NULL REFERENCES assoc_member,
	message           TEXT NOT NULL,
	status            TEXT NOT NULL,
	notification_type TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE disciplinary_workflow (
	disciplinary_workflow_id BIGSERIAL PRIMARY KEY,
	levy_fine_id             BIGINT NOT NULL UNIQUE REFERENCES levy_fine,
	assoc_member_id          BIGINT NOT NULL REFERENCES assoc_member,
	case_statement           TEXT NOT NULL,
	secretary_decision       TEXT NOT NULL,
	chairperson_decision     TEXT NOT NULL,
	payment_arrangement      TEXT,
	chairperson_override     BOOLEAN NOT NULL DEFAULT FALSE,
	final_status             TEXT NOT NULL,
	created_at               TIMESTAMPTZ NOT NULL,
	updated_at               TIMESTAMPTZ NOT NULL
);

CREATE TABLE audit_log (
	audit_id   UUID PRIMARY KEY,
	table_name TEXT NOT NULL,
	record_id  BIGINT NOT NULL,
	action_type TEXT NOT NULL,
	action_by  TEXT NOT NULL,
	action_at  TIMESTAMPTZ NOT NULL,
	old_data   JSONB,
	new_data   JSONB,
	published  BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX idx_audit_log_table_record ON audit_log (table_name, record_id);
CREATE INDEX idx_audit_log_unpublished ON audit_log (action_at) WHERE published = FALSE;
`
