package shopify

// Fixed query documents for the admin API. The member record query resolves
// reference fields one level deep so reviews arrive with the profile.

const queryCurrentAppInstallation = `
query {
    currentAppInstallation {
        id
    }
}
`

const mutationMetafieldsSet = `
mutation MetafieldsSet($metafields: MetafieldsSetInput!) {
    metafieldsSet(metafields: [$metafields]) {
        metafields {
            id
            namespace
            key
        }
        userErrors {
            field
            message
        }
    }
}
`

const queryMetafieldByKey = `
query GetAppInstallationMetafield($namespace: String!, $key: String!) {
    currentAppInstallation {
        metafield(namespace: $namespace, key: $key) {
            value
        }
    }
}
`

const mutationMetaobjectCreate = `
mutation MetaobjectCreate($metaobject: MetaobjectCreateInput!) {
    metaobjectCreate(metaobject: $metaobject) {
        metaobject {
            id
            handle
        }
        userErrors {
            field
            message
        }
    }
}
`

const mutationMetaobjectUpdate = `
mutation MetaobjectUpdate($id: ID!, $metaobject: MetaobjectUpdateInput!) {
    metaobjectUpdate(id: $id, metaobject: $metaobject) {
        userErrors {
            field
            message
            code
        }
    }
}
`

const queryMetaobjectByHandle = `
query GetMemberByHandle($handle: MetaobjectHandleInput!) {
    metaobjectByHandle(handle: $handle) {
        id
        handle
        fields {
            key
            value
            type
            reference {
                ... on Metaobject {
                    id
                    fields {
                        key
                        value
                        type
                    }
                }
            }
            references(first: 20) {
                edges {
                    node {
                        ... on Metaobject {
                            id
                            fields {
                                key
                                value
                                type
                            }
                        }
                    }
                }
            }
        }
    }
}
`

const queryMetaobjects = `
query GetAllMembers($type: String!, $query: String, $reverse: Boolean!, $sortKey: String, $first: Int, $after: String, $last: Int, $before: String) {
    metaobjects(type: $type, query: $query, reverse: $reverse, sortKey: $sortKey, first: $first, after: $after, last: $last, before: $before) {
        edges {
            node {
                id
                handle
                updatedAt
                name: field(key: "name") {
                    value
                }
                email: field(key: "email") {
                    value
                }
                role: field(key: "role") {
                    value
                }
            }
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}
`
