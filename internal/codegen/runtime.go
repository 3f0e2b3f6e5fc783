package codegen

// The handful of runtime helpers below are emitted verbatim into every
// module, once (spec §4.5): the string-concatenation runtime and the two
// Std conversion built-ins that need more than a single instruction.
// They are hand-written rather than generated because their control flow
// (byte-copy loops, digit extraction) has nothing to do with any Amy
// source construct; everything else in codegen is produced by walking
// the symbolic AST.

// stringConcatWAT implements `$String_concat(a, b)`: copies both
// NUL-terminated strings starting at the current heap pointer, writes a
// terminator, pads to a 4-byte boundary, advances the heap global, and
// returns the starting pointer (spec §4.5's `++` lowering).
const stringConcatWAT = `(func $String_concat (param $a i32) (param $b i32) (result i32)
  (local $start i32)
  (local $p i32)
  (local $c i32)
  (local $byte i32)
  global.get $heap
  local.set $start
  local.get $start
  local.set $p
  local.get $a
  local.set $c
  block $done_a
    loop $loop_a
      local.get $c
      i32.load8_u
      local.set $byte
      local.get $byte
      i32.eqz
      br_if $done_a
      local.get $p
      local.get $byte
      i32.store8
      local.get $p
      i32.const 1
      i32.add
      local.set $p
      local.get $c
      i32.const 1
      i32.add
      local.set $c
      br $loop_a
    end
  end
  local.get $b
  local.set $c
  block $done_b
    loop $loop_b
      local.get $c
      i32.load8_u
      local.set $byte
      local.get $byte
      i32.eqz
      br_if $done_b
      local.get $p
      local.get $byte
      i32.store8
      local.get $p
      i32.const 1
      i32.add
      local.set $p
      local.get $c
      i32.const 1
      i32.add
      local.set $c
      br $loop_b
    end
  end
  local.get $p
  i32.const 0
  i32.store8
  local.get $p
  i32.const 1
  i32.add
  local.set $p
  block $done_pad
    loop $loop_pad
      local.get $p
      i32.const 3
      i32.and
      i32.eqz
      br_if $done_pad
      local.get $p
      i32.const 0
      i32.store8
      local.get $p
      i32.const 1
      i32.add
      local.set $p
      br $loop_pad
    end
  end
  local.get $p
  global.set $heap
  local.get $start
)
`

// digitToStringWAT implements `$Std_digitToString(n)`: materializes the
// single-character decimal digit of n (0-9) as a one-byte string.
const digitToStringWAT = `(func $Std_digitToString (param $n i32) (result i32)
  (local $start i32)
  global.get $heap
  local.set $start
  local.get $start
  i32.const 4
  i32.add
  global.set $heap
  local.get $start
  local.get $n
  i32.const 48
  i32.add
  i32.store8
  local.get $start
  i32.const 1
  i32.add
  i32.const 0
  i32.store8
  local.get $start
)
`

// intToStringWAT implements `$Std_intToString(n)`: decimal-renders a
// signed 32-bit integer, handling the sign and zero specially, by first
// extracting digits least-significant-first into a 12-byte scratch
// region and then copying them (most-significant-first, with a leading
// '-' if negative) into the final materialized string.
const intToStringWAT = `(func $Std_intToString (param $n i32) (result i32)
  (local $neg i32)
  (local $u i32)
  (local $rev i32)
  (local $pos i32)
  (local $digit i32)
  (local $ndig i32)
  (local $total i32)
  (local $out i32)
  (local $i i32)
  (local $pad i32)
  global.get $heap
  local.set $rev
  local.get $rev
  i32.const 12
  i32.add
  global.set $heap
  local.get $rev
  local.set $pos
  local.get $n
  i32.const 0
  i32.lt_s
  local.set $neg
  local.get $neg
  if
    i32.const 0
    local.get $n
    i32.sub
    local.set $u
  else
    local.get $n
    local.set $u
  end
  local.get $u
  i32.eqz
  if
    local.get $pos
    i32.const 48
    i32.store8
    local.get $pos
    i32.const 1
    i32.add
    local.set $pos
  else
    block $done_u
      loop $loop_u
        local.get $u
        i32.eqz
        br_if $done_u
        local.get $u
        i32.const 10
        i32.rem_s
        local.set $digit
        local.get $pos
        local.get $digit
        i32.const 48
        i32.add
        i32.store8
        local.get $pos
        i32.const 1
        i32.add
        local.set $pos
        local.get $u
        i32.const 10
        i32.div_s
        local.set $u
        br $loop_u
      end
    end
  end
  local.get $pos
  local.get $rev
  i32.sub
  local.set $ndig
  local.get $ndig
  local.get $neg
  i32.add
  local.set $total
  global.get $heap
  local.set $out
  local.get $neg
  if
    local.get $out
    i32.const 45
    i32.store8
  end
  i32.const 0
  local.set $i
  block $done_copy
    loop $loop_copy
      local.get $i
      local.get $ndig
      i32.eq
      br_if $done_copy
      local.get $out
      local.get $neg
      i32.add
      local.get $i
      i32.add
      local.get $rev
      local.get $ndig
      i32.const 1
      i32.sub
      local.get $i
      i32.sub
      i32.add
      i32.load8_u
      i32.store8
      local.get $i
      i32.const 1
      i32.add
      local.set $i
      br $loop_copy
    end
  end
  local.get $out
  local.get $total
  i32.add
  i32.const 0
  i32.store8
  local.get $total
  i32.const 1
  i32.add
  local.set $pad
  block $done_pad
    loop $loop_pad
      local.get $pad
      i32.const 3
      i32.and
      i32.eqz
      br_if $done_pad
      local.get $out
      local.get $pad
      i32.add
      i32.const 0
      i32.store8
      local.get $pad
      i32.const 1
      i32.add
      local.set $pad
      br $loop_pad
    end
  end
  local.get $out
  local.get $pad
  i32.add
  global.set $heap
  local.get $out
)
`
