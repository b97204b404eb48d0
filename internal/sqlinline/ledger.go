package sqlinline

const QInsertLedgerEvent = `--sql 4c1f2a9e-8d63-4b0a-9f4e-5b2d7c81e6a0
insert into ledger_events(id, seq, kind, campaign_id, actor, amount, target, deadline, state, title, description, image, occurred_at)
values (gen_random_uuid(), $1::bigint, $2::text, $3::bigint, $4::text, $5::bigint, $6::bigint, $7::timestamptz, nullif($8::text, ''), $9::text, $10::text, $11::text, $12::timestamptz);
`

const QSelectLedgerEvents = `--sql a7e95d21-36fb-47c8-8b12-f04c6d9a3e55
select seq, kind, campaign_id, actor, amount, target, deadline, coalesce(state, ''), title, description, image, occurred_at
from ledger_events
order by seq asc;
`

const QInsertPayout = `--sql 1d8c44b7-52ae-4f6f-ae90-7c3b19f2d6c4
insert into payouts(id, campaign_id, recipient, amount, created_at)
values (gen_random_uuid(), $1::bigint, $2::text, $3::bigint, now());
`
